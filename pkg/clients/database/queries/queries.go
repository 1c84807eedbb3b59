package queries

import (
	_ "embed"
)

var (
	//go:embed schema.sql
	Schema string
	//go:embed next_build_number.sql
	NextBuildNumber string
)
