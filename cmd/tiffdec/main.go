// Command tiffdec decodes raw, decompressed TIFF strips into an image file.
//
// It is a thin front end over the tiffkit decoders for inspecting strip dumps
// produced by a container parser: the sample layout comes from flags or a JSON
// layout file, and the decoded pixels are written as TIFF or PNG.
package main

func main() {
	execute()
}
