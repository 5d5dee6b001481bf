// Package debug gates diagnostic logging on CUPCAKE_DEBUG_* environment
// variables.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Confee bool
	Pred   bool
	Write  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Confee = boolEnv("CUPCAKE_DEBUG_CONFEE")
	d.Pred = boolEnv("CUPCAKE_DEBUG_PRED")
	d.Write = boolEnv("CUPCAKE_DEBUG_WRITE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Confee() bool {
	return d.Confee
}
func Pred() bool {
	return d.Pred
}
func Write() bool {
	return d.Write
}
