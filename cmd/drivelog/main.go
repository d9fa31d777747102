/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

func main() {
	Execute()
}
