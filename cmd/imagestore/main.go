// Command imagestore serves image metadata from MongoDB and PostgreSQL.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
