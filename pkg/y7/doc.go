// Package y7 implements the Y7 Reader (C4) and Y7 Writer (C5): a
// tolerant XML-based legacy project format is parsed into a novel.Novel
// and a novel.Novel is serialized back into that format, including its
// CDATA quirks and the project-variable encoding of locale/language
// information.
package y7
