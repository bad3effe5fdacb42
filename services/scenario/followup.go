package scenario

import "reservodojo/models"

// ShouldGenerateFollowUp is a single Bernoulli draw with the configured
// follow-up probability.
func ShouldGenerateFollowUp(rng Rand, cfg models.TrainerConfig) bool {
	return rng.Float64() < clamp01(cfg.FollowUpProbability)
}

// PickRandomFollowUp picks one non-blank follow-up task uniformly.
func PickRandomFollowUp(rng Rand, cfg models.TrainerConfig) (string, bool) {
	tasks := nonBlank(cfg.FollowUpTasks)
	if len(tasks) == 0 {
		return "", false
	}
	return tasks[rng.Intn(len(tasks))], true
}

// SampleFollowUp runs the Bernoulli draw and, on success, the pick. It is
// used when a task is marked finished, never while generating.
func SampleFollowUp(rng Rand, cfg models.TrainerConfig) (string, bool) {
	if !ShouldGenerateFollowUp(rng, cfg) {
		return "", false
	}
	return PickRandomFollowUp(rng, cfg)
}
