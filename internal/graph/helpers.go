package graph

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Helper Functions
// ============================================================================

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getInt64FromRecord(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return i
	}
	if i, ok := val.(int); ok {
		return int64(i)
	}
	return 0
}

func getBoolFromRecord(record *neo4j.Record, key string) bool {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return false
}

// Entity record builders. Each expects the query to alias properties as
// id/name/email/title/content/created_at.

func userFromRecord(record *neo4j.Record) *User {
	return &User{
		ID:        getStringFromRecord(record, "id"),
		Name:      getStringFromRecord(record, "name"),
		Email:     getStringFromRecord(record, "email"),
		CreatedAt: getInt64FromRecord(record, "created_at"),
	}
}

func postFromRecord(record *neo4j.Record) *Post {
	return &Post{
		ID:        getStringFromRecord(record, "id"),
		Title:     getStringFromRecord(record, "title"),
		Content:   getStringFromRecord(record, "content"),
		CreatedAt: getInt64FromRecord(record, "created_at"),
	}
}

func commentFromRecord(record *neo4j.Record) *Comment {
	return &Comment{
		ID:        getStringFromRecord(record, "id"),
		Content:   getStringFromRecord(record, "content"),
		CreatedAt: getInt64FromRecord(record, "created_at"),
	}
}
