// Package common provides error types and helpers shared across the
// novelbridge packages (markup converters, the Y7 reader/writer, and the
// novel domain model).
package common
