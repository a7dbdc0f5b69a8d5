// Package main provides the entry point for the Lumincoin Finance client.
//
// The client talks to the Lumincoin Finance REST API. It keeps the session
// between invocations and offers both one-shot commands and an interactive
// shell that walks the same pages as the web client.
//
// Usage:
//
//	lumincoin login --email ivan@mail.ru --password Secret123
//	lumincoin operations list --period month
//	lumincoin shell
//
// See --help for all available options.
package main

func main() {
	Execute()
}
