// Package faq answers free-text questions from a knowledge base.
//
// A Service is a read-only view over a retrieval.Searcher and the corpus it
// was built from. It produces either a single best answer with a confidence
// score (GetAnswer) or a block of question/answer pairs meant to be handed
// to a language model through a tool call (GetContext, LookupInfo).
//
// Confidence is a linear decay of squared Euclidean distance,
// max(0, 1 - distance/scale). The default scale of 10 was calibrated by
// hand against the distances short, related questions produce with the
// sentence-embedding model the system was first built with. It is not a
// probability, and it needs recalibrating whenever the embedder changes.
package faq
