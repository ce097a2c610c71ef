// Command fitsctl inspects FITS headers.
package main

func main() {
	execute()
}
