// Package novel provides a minimal in-memory implementation of the "Novel
// Service" capability-set that the Y7/NX codec consumes: the typed novel
// graph (chapters, sections, characters, locations, items, plot lines,
// plot points, project notes) plus the ordered-child Tree it is built on.
//
// The codec itself never constructs this graph in a real deployment, that
// is a host application's job, but the reader and writer need a concrete
// implementation to populate and read during tests, so this package stands
// in for it. Entities share a flat BasicElement prefix (title/desc) rather
// than an inheritance hierarchy, composing the document graph out of plain
// structs instead.
package novel
