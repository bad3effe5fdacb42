// File: reservodojo/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	Health gin.HandlerFunc

	// Config endpoints
	GetConfig      gin.HandlerFunc
	SaveConfig     gin.HandlerFunc
	ValidateConfig gin.HandlerFunc

	// Scenario endpoints
	NewScenario     gin.HandlerFunc
	GetScenario     gin.HandlerFunc
	DiscardScenario gin.HandlerFunc
	FinishScenario  gin.HandlerFunc

	// Task endpoints
	ListTasks    gin.HandlerFunc
	GetTask      gin.HandlerFunc
	ReviewTask   gin.HandlerFunc
	DownloadTask gin.HandlerFunc
}

// NewHandlerBundle wires a TrainerHandler into a bundle.
func NewHandlerBundle(th *TrainerHandler) *HandlerBundle {
	return &HandlerBundle{
		Health: HealthHandler,

		GetConfig:      th.GetConfigHandler,
		SaveConfig:     th.SaveConfigHandler,
		ValidateConfig: th.ValidateConfigHandler,

		NewScenario:     th.NewScenarioHandler,
		GetScenario:     th.GetScenarioHandler,
		DiscardScenario: th.DiscardScenarioHandler,
		FinishScenario:  th.FinishScenarioHandler,

		ListTasks:    th.ListTasksHandler,
		GetTask:      th.GetTaskHandler,
		ReviewTask:   th.ReviewTaskHandler,
		DownloadTask: th.DownloadTaskHandler,
	}
}
