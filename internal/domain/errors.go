package domain

import "errors"

var (
	// ErrExtractionEmpty is returned when the input is blank or yields no usable pairs.
	ErrExtractionEmpty = errors.New("no question/answer pairs could be extracted")
	// ErrInsufficientPairs flags a document that produced fewer pairs than the usability threshold.
	ErrInsufficientPairs = errors.New("too few question/answer pairs")
	// ErrDistractorShortfall means three distinct distractors could not be produced.
	ErrDistractorShortfall = errors.New("could not synthesize three distinct distractors")
	// ErrAssemblyEmptyPool is returned when assembly is attempted with zero pairs.
	ErrAssemblyEmptyPool = errors.New("no question/answer pairs to assemble")
	// ErrQuizNotFound indicates a generated quiz could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrUnknownDomain indicates a domain hint outside the supported set.
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrInvalidRecord indicates a quiz record failed output validation.
	ErrInvalidRecord = errors.New("invalid quiz record")
)
