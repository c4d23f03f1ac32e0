// Package bizcast provides the forecasting engine of a small-business
// bookkeeping tool: it predicts future revenue and expenses from the
// historical ledger and keeps track of how accurate past predictions
// turned out to be.
//
// The core functionalities include:
//   - Holt-Winters Forecasting: additive and multiplicative triple
//     exponential smoothing over monthly (or any periodic) series, with
//     automatic method selection, season-length detection, and a simple
//     smoothing fallback for short series.
//   - Accuracy Tracking: every forecast is recorded, reconciled against
//     realized ledger totals once its period has elapsed, and summarized
//     into historical accuracy statistics.
//   - Ledger Management: recording revenue and expense transactions in a
//     chronological record and aggregating them into time series.
//   - Data Persistence: encoding and decoding ledger and forecast data
//     to and from human-readable, version-controllable JSONL files.
//
// This package serves as the foundational logic for the `bzc` command-line
// tool.
package bizcast
