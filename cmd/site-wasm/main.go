//go:build js && wasm

package main

import "github.com/Its-donkey/cloudhub-site/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
