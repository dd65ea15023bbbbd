package egg

// The two boundary models are 36-vertex discretizations of the BOILED-Egg
// ellipse fits in (TPSA, WLogP) space: the white region (gastrointestinal
// absorption) and the yolk (blood-brain-barrier permeation). Vertex order
// is part of the model and must not change. The tables are loaded into
// immutable polygons once at package initialization and shared read-only
// by every classification call.

var giaVertices = []Point{
	{142.080, 1.013}, {141.015, 1.791}, {137.823, 2.585},
	{132.603, 3.369}, {125.513, 4.121}, {116.768, 4.817},
	{106.634, 5.437}, {95.418, 5.960}, {83.463, 6.373},
	{71.130, 6.661}, {58.794, 6.817}, {46.832, 6.835},
	{35.605, 6.715}, {25.455, 6.461}, {16.690, 6.080},
	{9.577, 5.584}, {4.332, 4.988}, {1.115, 4.310},
	{0.022, 3.571}, {1.087, 2.793}, {4.279, 1.999},
	{9.499, 1.215}, {16.589, 0.463}, {25.334, -0.233},
	{35.468, -0.853}, {46.684, -1.376}, {58.639, -1.789},
	{70.972, -2.077}, {83.308, -2.233}, {95.270, -2.251},
	{106.497, -2.131}, {116.647, -1.877}, {125.412, -1.496},
	{132.525, -1.000}, {137.770, -0.404}, {140.987, 0.274},
}

var bbbVertices = []Point{
	{79.147, 3.050}, {78.525, 3.534}, {76.676, 4.007},
	{73.655, 4.456}, {69.554, 4.865}, {64.497, 5.223},
	{58.640, 5.519}, {52.158, 5.744}, {45.250, 5.891},
	{38.126, 5.955}, {31.001, 5.935}, {24.092, 5.832},
	{17.609, 5.647}, {11.750, 5.387}, {6.692, 5.061},
	{2.588, 4.677}, {-0.436, 4.247}, {-2.288, 3.785},
	{-2.913, 3.304}, {-2.291, 2.820}, {-0.442, 2.347},
	{2.579, 1.898}, {6.680, 1.489}, {11.737, 1.131},
	{17.594, 0.835}, {24.076, 0.610}, {30.984, 0.463},
	{38.108, 0.399}, {45.233, 0.419}, {52.142, 0.522},
	{58.625, 0.707}, {64.484, 0.967}, {69.542, 1.293},
	{73.646, 1.677}, {76.670, 2.107}, {78.522, 2.569},
}

var (
	bbbBoundary = NewPolygon(bbbVertices)
	giaBoundary = NewPolygon(giaVertices)
)

// BBB returns the blood-brain-barrier (yolk) boundary polygon.
func BBB() Polygon { return bbbBoundary }

// GIA returns the gastrointestinal-absorption (white) boundary polygon.
func GIA() Polygon { return giaBoundary }
