package features

import (
	"github.com/sirupsen/logrus"

	"github.com/hironyan25/jra-keiba-analysis/internal/models"
)

// PaceFeatures runs the full pace pipeline: join, running-style and pace
// classification, advantage resolution and previous-race lag attachment.
// Each stage consumes the complete output of its predecessor and an empty
// predecessor result simply flows through as no data.
func PaceFeatures(races []models.RaceRecord, results []models.ResultEntry, logger *logrus.Logger) []models.Entry {
	entries := JoinEntries(races, results, logger)
	if len(entries) == 0 {
		return nil
	}
	entries = ClassifyStyles(entries)
	entries = ClassifyPaceTypes(entries)
	entries = ResolveAdvantages(entries)
	entries = AttachPreviousRace(entries)
	return entries
}
