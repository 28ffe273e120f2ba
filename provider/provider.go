// Package provider defines the translation provider interface and implementations.
package provider

import "github.com/ZaguanLabs/deepltool"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = deepltool.Provider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = deepltool.TranslateRequest

// TranslateResult is an alias to the main package type.
type TranslateResult = deepltool.TranslateResult
