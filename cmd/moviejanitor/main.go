// Command moviejanitor cleans a movie-metadata CSV and writes the result.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
