// Command serializers validates JSON or YAML input against schemas declared
// in a definitions file and prints the normalized result or the error list.
package main

import "os"

func main() {
	os.Exit(Execute())
}
