/*
NAME
  palette.go - the fixed 64-thread Brother PEC palette.

DESCRIPTION
  See Readme.md

LICENSE
  Copyright (C) 2026 the Brother PES Codec Project. All Rights Reserved.
*/

// Package palette provides the fixed 64-entry Brother embroidery thread
// table used by the PEC/PES codecs, plus nearest-RGB lookup.
package palette

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ausocean/pes/stitch"
)

// Count is the number of threads in the palette.
const Count = 64

// threads is the verified 64-thread table (indices 1..64), matching the
// table verified against a Brother Innovis 955 sewing and embroidery
// machine's "EMBROIDERY" thread space.
var threads = [Count]stitch.Thread{
	{1, "1", "000", "Prussian Blue", "A", rgb(26, 10, 148)},
	{2, "2", "000", "Blue", "A", rgb(15, 117, 255)},
	{3, "3", "000", "Teal Green", "A", rgb(0, 147, 76)},
	{4, "4", "000", "Corn Flower Blue", "A", rgb(186, 189, 254)},
	{5, "5", "000", "Red", "A", rgb(236, 0, 0)},
	{6, "6", "000", "Reddish Brown", "A", rgb(228, 153, 90)},
	{7, "7", "000", "Magenta", "A", rgb(204, 72, 171)},
	{8, "8", "000", "Light Lilac", "A", rgb(253, 196, 250)},
	{9, "9", "000", "Lilac", "A", rgb(221, 132, 205)},
	{10, "10", "000", "Mint Green", "A", rgb(107, 211, 138)},
	{11, "11", "000", "Deep Gold", "A", rgb(228, 169, 69)},
	{12, "12", "000", "Orange", "A", rgb(255, 189, 66)},
	{13, "13", "000", "Yellow", "A", rgb(255, 230, 0)},
	{14, "14", "000", "Lime Green", "A", rgb(108, 217, 0)},
	{15, "15", "000", "Brass", "A", rgb(193, 169, 65)},
	{16, "16", "000", "Silver", "A", rgb(181, 173, 151)},
	{17, "17", "000", "Russet Brown", "A", rgb(186, 156, 95)},
	{18, "18", "000", "Cream Brown", "A", rgb(250, 245, 158)},
	{19, "19", "000", "Pewter", "A", rgb(128, 128, 128)},
	{20, "20", "000", "Black", "A", rgb(0, 0, 0)},
	{21, "21", "000", "Ultramarine", "A", rgb(0, 28, 223)},
	{22, "22", "000", "Royal Purple", "A", rgb(223, 0, 184)},
	{23, "23", "000", "Dark Gray", "A", rgb(98, 98, 98)},
	{24, "24", "000", "Dark Brown", "A", rgb(105, 38, 13)},
	{25, "25", "000", "Deep Rose", "A", rgb(255, 0, 96)},
	{26, "26", "000", "Light Brown", "A", rgb(191, 130, 0)},
	{27, "27", "000", "Salmon Pink", "A", rgb(243, 145, 120)},
	{28, "28", "000", "Vermillion", "A", rgb(255, 104, 5)},
	{29, "29", "000", "White", "A", rgb(240, 240, 240)},
	{30, "30", "000", "Violet", "A", rgb(200, 50, 205)},
	{31, "31", "000", "Seacrest", "A", rgb(176, 191, 155)},
	{32, "32", "000", "Sky Blue", "A", rgb(101, 191, 235)},
	{33, "33", "000", "Pumpkin", "A", rgb(255, 186, 4)},
	{34, "34", "000", "Cream Yellow", "A", rgb(255, 240, 108)},
	{35, "35", "000", "Khaki", "A", rgb(254, 202, 21)},
	{36, "36", "000", "Clay Brown", "A", rgb(243, 129, 1)},
	{37, "37", "000", "Leaf Green", "A", rgb(55, 169, 35)},
	{38, "38", "000", "Peacock Blue", "A", rgb(35, 70, 95)},
	{39, "39", "000", "Gray", "A", rgb(166, 166, 149)},
	{40, "40", "000", "Warm Gray", "A", rgb(206, 191, 166)},
	{41, "41", "000", "Dark Olive", "A", rgb(150, 170, 2)},
	{42, "42", "000", "Linen", "A", rgb(255, 227, 198)},
	{43, "43", "000", "Pink", "A", rgb(255, 153, 215)},
	{44, "44", "000", "Deep Green", "A", rgb(0, 112, 4)},
	{45, "45", "000", "Lavender", "A", rgb(237, 204, 251)},
	{46, "46", "000", "Wisteria Violet", "A", rgb(192, 137, 216)},
	{47, "47", "000", "Beige", "A", rgb(231, 217, 180)},
	{48, "48", "000", "Carmine", "A", rgb(233, 14, 134)},
	{49, "49", "000", "Amber Red", "A", rgb(207, 104, 41)},
	{50, "50", "000", "Olive Green", "A", rgb(64, 134, 21)},
	{51, "51", "000", "Dark Fuschia", "A", rgb(219, 23, 151)},
	{52, "52", "000", "Tangerine", "A", rgb(255, 167, 4)},
	{53, "53", "000", "Light Blue", "A", rgb(185, 255, 255)},
	{54, "54", "000", "Emerald Green", "A", rgb(34, 137, 39)},
	{55, "55", "000", "Purple", "A", rgb(182, 18, 205)},
	{56, "56", "000", "Moss Green", "A", rgb(0, 170, 0)},
	{57, "57", "000", "Flesh Pink", "A", rgb(254, 169, 220)},
	{58, "58", "000", "Harvest Gold", "A", rgb(254, 213, 16)},
	{59, "59", "000", "Electric Blue", "A", rgb(0, 151, 223)},
	{60, "60", "000", "Lemon Yellow", "A", rgb(255, 255, 132)},
	{61, "61", "000", "Fresh Green", "A", rgb(207, 231, 116)},
	{62, "62", "000", "Applique Material", "A", rgb(255, 200, 100)},
	{63, "63", "000", "Applique Position", "A", rgb(255, 200, 200)},
	{64, "64", "000", "Applique", "A", rgb(255, 200, 200)},
}

func rgb(r, g, b uint8) stitch.RGB { return stitch.RGB{R: r, G: g, B: b} }

// Thread returns the palette thread for the given 1-based index, or
// stitch.Undefined() if index is out of range.
func Thread(index int) stitch.Thread {
	if index < 1 || index > Count {
		return stitch.Undefined()
	}
	return threads[index-1]
}

// Nearest returns the 1-based palette index whose RGB is closest to c by
// squared Euclidean distance, breaking ties by first-wins in palette
// order. distances is scratch space reused across calls via
// gonum/floats.MinIdx to avoid a per-call allocation when the caller
// supplies a non-nil slice of length Count; pass nil to let Nearest
// allocate its own.
func Nearest(c stitch.RGB, distances []float64) int {
	if cap(distances) < Count {
		distances = make([]float64, Count)
	}
	distances = distances[:Count]
	for i, t := range threads {
		distances[i] = float64(t.RGB.SquaredDistance(c))
	}
	return floats.MinIdx(distances) + 1
}
