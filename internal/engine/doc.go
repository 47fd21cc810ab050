// Package engine runs candidate videos through the duplicate gates and
// records accepted ones.
//
// A submission is a fixed sequence of hard gates: load the record log,
// parse the candidate filename, run the ordered filename checks,
// extract the first-frame fingerprint, run the fingerprint check, and
// append on success. Nothing is mutated until the final step, so a
// rejection at any gate leaves the store untouched. The Processor
// wraps the engine in a single worker so overlapping triggers cannot
// both pass the checks against the same store snapshot.
package engine
