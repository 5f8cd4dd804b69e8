package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"minesweeper/game"
)

func main() {
	var input string
	var level int
	var err error

	for {
		fmt.Print("Enter the level (1-5) or 'q' to quit: ")
		_, err = fmt.Scan(&input)

		if err != nil {
			fmt.Println("Error reading input:", err)
			return
		}

		if strings.ToLower(input) == "q" {
			fmt.Println("Quitting...")
			return
		}

		level, err = strconv.Atoi(input)
		if err == nil && level >= 1 && level <= 5 {
			break
		}

		fmt.Println("Invalid input. Please enter a level between 1 and 5 or 'q' to quit.")
	}

	service := game.NewMinesweeperService()
	controller := game.NewGameController(service)

	if err := controller.StartGame(level); err != nil {
		logrus.WithError(err).Fatal("could not start the game")
	}
	controller.TerminateGame()
}
