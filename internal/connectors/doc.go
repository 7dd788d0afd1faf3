// Package connectors holds the corpus sources. Each connector streams raw
// posts from one kind of location: the newsgroups connector downloads the
// published archive, the filesystem connector reads a local copy, and the
// archive package implements the layout both of them share.
//
// Connectors are built from settings by the Factory.
package connectors
