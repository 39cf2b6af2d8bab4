// Package insight implements the analytical engines that judge meetings
// rather than schedule them: effectiveness scoring, team workload
// balancing, meeting-pattern analysis, and schedule optimization advice.
//
// All scoring functions are pure and total: structurally valid input never
// fails, degenerate input (an empty agenda, a lone participant) yields a
// low but defined score. Results are produced fresh per call.
package insight
