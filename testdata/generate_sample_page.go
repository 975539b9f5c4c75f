//go:build ignore

// Generates testdata/sample-page.png, a mock page screenshot for trying out
// colour extraction and image simulation:
//
//	go run testdata/generate_sample_page.go
package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
)

func main() {
	const width, height = 640, 400
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	fill := func(r image.Rectangle, c color.RGBA) {
		draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
	}

	fill(img.Bounds(), color.RGBA{R: 255, G: 255, B: 255, A: 255})                         // page
	fill(image.Rect(0, 0, width, 56), color.RGBA{R: 26, G: 115, B: 232, A: 255})           // header
	fill(image.Rect(24, 18, 160, 38), color.RGBA{R: 255, G: 255, B: 255, A: 255})          // logo
	fill(image.Rect(40, 96, 400, 112), color.RGBA{R: 34, G: 34, B: 34, A: 255})            // heading
	fill(image.Rect(40, 128, 360, 136), color.RGBA{R: 119, G: 119, B: 119, A: 255})        // body text
	fill(image.Rect(40, 148, 380, 156), color.RGBA{R: 119, G: 119, B: 119, A: 255})        // body text
	fill(image.Rect(40, 196, 200, 236), color.RGBA{R: 228, G: 26, B: 28, A: 255})          // sale button
	fill(image.Rect(220, 196, 380, 236), color.RGBA{R: 77, G: 175, B: 74, A: 255})         // buy button
	fill(image.Rect(440, 96, 600, 256), color.RGBA{R: 255, G: 215, B: 0, A: 255})          // banner
	fill(image.Rect(0, height-48, width, height), color.RGBA{R: 51, G: 51, B: 51, A: 255}) // footer

	f, err := os.Create("testdata/sample-page.png")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
	log.Println("wrote testdata/sample-page.png")
}
