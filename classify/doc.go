// Package classify turns per-category evidence scores into a Classification.
//
// The classifier picks the highest-scoring category, breaking exact ties by
// the fixed operational-severity priority in taxonomy.Priority. A winning
// score below the confidence floor falls back to a general classification
// with the neutral confidence 0.5. Classification never fails: malformed
// context degrades to "no evidence" inside the extractors, and the
// classifier itself only reads precomputed scores.
package classify
