package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/slugstore/cli/internal/ui"
)

const usageDoc = `# slugstore

A slug-keyed single-table SQLite store. Every table carries four reserved
columns:

| column        | type    | meaning                          |
|---------------|---------|----------------------------------|
| ` + "`_id`" + `         | INTEGER | engine-assigned surrogate key    |
| ` + "`_slug`" + `       | TEXT    | unique external row key          |
| ` + "`_created_at`" + ` | TEXT    | set once, at first insert        |
| ` + "`_updated_at`" + ` | TEXT    | set on every insert or update    |

Reserved columns never appear in write payloads; reads (projection,
ordering, filters) may reference them.

## Typical session

` + "```" + `
slugstore init --db blog.db --table posts
slugstore table add-column title TEXT
slugstore table add-column views INTEGER
slugstore row put hello-world --data '{"title":"Hello","views":0}'
slugstore query --where 'views >= 0 AND title LIKE "H%"' --order '_id'
` + "```" + `

## Filter expressions

Comparisons (` + "`= != < <= > >= LIKE`" + ` and ` + "`IS NULL`" + `) combined
with ` + "`AND`" + `, ` + "`OR`" + `, ` + "`NOT`" + ` and parentheses. Strings
are double-quoted. ` + "`IN`" + `, ` + "`BETWEEN`" + ` and ` + "`EXISTS`" + `
are reserved and rejected until implemented.

## Configuration

Read from ` + "`.slugstore.yaml`" + ` (current directory, home, or
` + "`~/.config/slugstore`" + `), environment variables with the
` + "`SLUGSTORE_`" + ` prefix, and ` + "`.env`" + `/` + "`.env.local`" + `
files. Keys: ` + "`database_path`" + `, ` + "`table_name`" + `.
`

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show usage documentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.PrintMarkdown(usageDoc)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
