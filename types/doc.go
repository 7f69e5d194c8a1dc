// Package types provides core type definitions and interfaces for the Sitzplatz library.
//
// This package contains shared types that are used across multiple packages in the
// Sitzplatz library. By keeping these types in a separate package, we avoid import
// cycles between the main sitzplatz package and its internal implementations.
//
// Key types:
//   - Weekday, Week, Date: calendar primitives for weekly scheduling
//   - Occupant, Group, Resource: floor plan and roster records
//   - Assignment: a single occupant-to-resource placement
//   - StateSnapshot: the complete persisted document
//   - Logger: structured logging interface
//   - MetricsCollector: metrics recording interface
//   - SnapshotStore: persistence collaborator interface
package types
