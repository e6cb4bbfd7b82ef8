package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	historyTableName = "history_items"
	llmTableName     = "llm_requests"

	colID           = "id"
	colSequence     = "sequence"
	colTimestamp    = "timestamp"
	colSessionID    = "session_id"
	colUserName     = "user_name"
	colScore        = "score"
	colQuestions    = "questions"
	colConfig       = "config"
	colResults      = "results"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
)

var (
	// HistoryItemsColumns holds the columns for the "history_items" table.
	// Timestamps are unix milliseconds; config and results are JSON.
	HistoryItemsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeInt64},
		{Name: colSessionID, Type: field.TypeString, Unique: true},
		{Name: colUserName, Type: field.TypeString},
		{Name: colScore, Type: field.TypeInt, Default: 0},
		{Name: colQuestions, Type: field.TypeInt, Default: 0},
		{Name: colConfig, Type: field.TypeString, Size: 2147483647},
		{Name: colResults, Type: field.TypeString, Size: 2147483647},
	}
	// HistoryItemsTable holds the schema information for the "history_items" table.
	HistoryItemsTable = &schema.Table{
		Name:       historyTableName,
		Columns:    HistoryItemsColumns,
		PrimaryKey: []*schema.Column{HistoryItemsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "historyitem_timestamp", Unique: false, Columns: []*schema.Column{HistoryItemsColumns[2]}},
		},
	}

	// LlmRequestsColumns holds the columns for the "llm_requests" table.
	LlmRequestsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeInt64},
		{Name: colProvider, Type: field.TypeString},
		{Name: colModel, Type: field.TypeString},
		{Name: colPurpose, Type: field.TypeString},
		{Name: colInputTokens, Type: field.TypeInt, Default: 0},
		{Name: colOutputTokens, Type: field.TypeInt, Default: 0},
		{Name: colLatencyMs, Type: field.TypeInt64, Default: 0},
		{Name: colSuccess, Type: field.TypeBool},
		{Name: colErrorMessage, Type: field.TypeString, Default: ""},
		{Name: colRequestBody, Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: colResponseBody, Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestsTable holds the schema information for the "llm_requests" table.
	LlmRequestsTable = &schema.Table{
		Name:       llmTableName,
		Columns:    LlmRequestsColumns,
		PrimaryKey: []*schema.Column{LlmRequestsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequest_purpose", Unique: false, Columns: []*schema.Column{LlmRequestsColumns[5]}},
			{Name: "llmrequest_model", Unique: false, Columns: []*schema.Column{LlmRequestsColumns[4]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		HistoryItemsTable,
		LlmRequestsTable,
	}
)
