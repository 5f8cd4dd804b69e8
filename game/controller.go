package game

// GameController is the entry point the outer program talks to: it picks
// the configuration for a difficulty level and hands it to the service.
type GameController struct {
	service *MinesweeperService
}

func NewGameController(service *MinesweeperService) *GameController {
	return &GameController{service: service}
}

func (c *GameController) StartGame(level int) error {
	return c.service.Run(Preset(level))
}

func (c *GameController) TerminateGame() {
	log.Info("terminating the game")
}
