// Package lena provides the types and functions to manage real-estate
// micro-investment records and to evaluate a tokenized rental property. It is
// designed to be local-first: every record lives in a data folder owned by the
// user, and every metric is recomputed from the user's inputs.
//
// The core functionalities include:
//   - Metrics Engine: a stateless calculator that derives ownership, income,
//     fees, yields and break-even time from a handful of inputs (see Compute).
//   - Records: properties, investors and the purchases of units linking them.
//     Purchases reference investors and properties by identifier only, and
//     dangling references are resolved to placeholders when read.
//   - Data Persistence: the Store interface, with a human-readable JSONL
//     implementation (see OpenFileStore) suitable for a private git repository.
//
// This package serves as the foundational logic for the `lena` command-line
// tool.
package lena
