// Package analysis scores transcript segments for unusualness using
// speech-rate heuristics.
//
// Scoring is a pure function of the ordered segment slice: every derived
// column is recomputed from text and duration on each run, reference stats
// (median, IQR, rolling means) come from the sibling rows, and the output is
// ranked by unusual score with the original order as tie-break. Three rule
// sets coexist deliberately and must stay independent: the tiered deviation
// score ladder, the boolean unusual gate, and the continuous ranking score.
// Their thresholds were tuned separately and are not algebraically
// equivalent.
//
// Malformed rows never abort a source; they degrade to safe defaults and an
// empty source yields an empty, well-formed result.
package analysis
