// Package mock provides testify mocks of the codebinge service interfaces.
package mock

import "github.com/stretchr/testify/mock"

// Anything matches any argument in On expectations.
const Anything = mock.Anything

// AnythingOfType matches an argument by its type name.
func AnythingOfType(t string) mock.AnythingOfTypeArgument {
	return mock.AnythingOfType(t)
}

// Arguments holds the arguments of a recorded call.
type Arguments = mock.Arguments
