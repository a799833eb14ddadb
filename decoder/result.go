package decoder

// Result holds the classification output.
type Result struct {
	Label     string          // winning class
	Distance  float64         // its mean Tokhura distance
	Distances []LabelDistance // every class, in enumeration order
}

// LabelDistance is one class's aggregate distance to the query.
type LabelDistance struct {
	Label    string
	Distance float64
}
