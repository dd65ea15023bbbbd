package domain

import "errors"

var (
	// ErrEmptyInput signals a blank or empty SMILES string.
	ErrEmptyInput = errors.New("empty SMILES input")
	// ErrMoleculeParse signals that the descriptor source could not parse the SMILES.
	ErrMoleculeParse = errors.New("unparseable SMILES")
	// ErrDescriptorUnavailable signals a descriptor source transport failure.
	ErrDescriptorUnavailable = errors.New("descriptor source unavailable")
)
