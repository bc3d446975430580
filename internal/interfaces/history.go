package interfaces

import "ai-signal-analyzer/internal/types"

type HistoryStore interface {
	Append(rec types.AnalysisRecord)
	Recent(limit int) []types.AnalysisRecord
	Len() int
}
