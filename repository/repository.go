// Package repository is the relational store behind the services: one
// interface per aggregate, implemented over GORM.
package repository

import (
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by Find* methods when no row matches.
	ErrNotFound = gorm.ErrRecordNotFound
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = gorm.ErrDuplicatedKey
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern builds a LIKE pattern matching values that start with prefix.
func prefixPattern(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
