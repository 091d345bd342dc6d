// Package engine provides the tabular data engine behind tenant-defined
// databases.
//
// Tenants declare tables and columns at runtime; no relational DDL ever runs
// for them. The engine stores rows as collections of typed cells (an EAV
// layout) and reimplements, in application logic, what a conventional schema
// would give for free: structural typing, safe type migration, required and
// unique constraints, and gap-free sequential identifiers.
//
// # Architecture
//
// The package is organized around several pieces:
//
//   - Schema Catalog: durable Table/Column definitions with protected-table
//     guardrails, fronted by a TTL cache of column sets.
//   - Converter: a dispatch table of pure (from, to) type conversions used
//     when a column's declared type changes, with data-loss and warning
//     reporting ([AttemptConversion], [IsConversionSafe]).
//   - Row store: [Service.CreateRowWithCells] coerces input values to storage
//     form and writes a row plus its complete cell set in one transaction.
//   - Constraint validator: advisory uniqueness checks for fast failures,
//     repeated under an advisory lock inside the write transaction for hard
//     enforcement.
//   - Sequence generator: [Service.IssueInvoiceNumber] hands out invoice
//     numbers under a per-series row lock; [Service.PeekInvoiceNumber]
//     previews without consuming.
//
// # Error Handling
//
// Deterministic failures surface as typed errors (ValidationError,
// ConversionError, UniquenessError, NotFoundError) and are never retried.
// Counter lock contention surfaces as ConcurrencyError and is retried a
// bounded number of times inside the engine. Technical errors map to coded
// user messages via [MapError].
package engine
