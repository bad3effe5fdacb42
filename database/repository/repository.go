package repository

import (
	configRepo "reservodojo/database/repository/configs"
	draftRepo "reservodojo/database/repository/drafts"
	taskRepo "reservodojo/database/repository/tasks"
)

// Re-export the ConfigRepository interface and constructors.
type ConfigRepository = configRepo.ConfigRepository

var (
	NewMongoConfigRepo  = configRepo.NewMongoConfigRepo
	NewMemoryConfigRepo = configRepo.NewMemoryConfigRepo
)

// Re-export the TaskRepository interface and constructors.
type TaskRepository = taskRepo.TaskRepository

var (
	NewMongoTaskRepo  = taskRepo.NewMongoTaskRepo
	NewMemoryTaskRepo = taskRepo.NewMemoryTaskRepo
)

// Re-export the DraftStore interface and constructors.
type DraftStore = draftRepo.DraftStore

var (
	NewRedisDraftStore  = draftRepo.NewRedisDraftStore
	NewMemoryDraftStore = draftRepo.NewMemoryDraftStore
)

// Stores bundles the persistence a trainer service needs.
type Stores struct {
	Configs ConfigRepository
	Tasks   TaskRepository
	Drafts  DraftStore
}

// NewMemoryStores builds in-process stores.
func NewMemoryStores() Stores {
	return Stores{
		Configs: NewMemoryConfigRepo(),
		Tasks:   NewMemoryTaskRepo(),
		Drafts:  NewMemoryDraftStore(),
	}
}
