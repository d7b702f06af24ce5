// Package domain contains the core domain entities and value objects for imgship.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [Attachment]: A single encoded image (filename plus finished payload bytes)
//   - [Post]: An aggregate of attachments delivered under one caption, with the
//     partitioning rule that splits it into channel-sized delivery groups
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
