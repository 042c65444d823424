// Package model defines the data structures shared by the seed cleaner.
package model

// Path represents a file system path.
type Path string

// SourceFile is a text file loaded as an ordered sequence of lines.
// Every line keeps its original terminator so joining them restores the file.
type SourceFile struct {
	Path  Path
	Hash  string
	Lines []string
}
