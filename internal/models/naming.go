package models

import (
	"gorm.io/gorm/schema"
)

// NamingStrategy is GORM's default naming with foreign-key constraints named
// fk_<table>_<column>_<referenced_table>.
type NamingStrategy struct {
	schema.NamingStrategy
}

// RelationshipFKName names the constraint after the table holding the
// foreign key column, the column, and the table it points to.
func (ns NamingStrategy) RelationshipFKName(rel schema.Relationship) string {
	if len(rel.References) == 0 {
		return ns.NamingStrategy.RelationshipFKName(rel)
	}
	ref := rel.References[0]
	if ref.ForeignKey == nil || ref.PrimaryKey == nil || ref.ForeignKey.Schema == nil || ref.PrimaryKey.Schema == nil {
		return ns.NamingStrategy.RelationshipFKName(rel)
	}
	return ForeignKeyName(ref.ForeignKey.Schema.Table, ref.ForeignKey.DBName, ref.PrimaryKey.Schema.Table)
}

// ForeignKeyName formats a constraint name the way the SQL migrations spell it.
func ForeignKeyName(table, column, referencedTable string) string {
	return "fk_" + table + "_" + column + "_" + referencedTable
}
