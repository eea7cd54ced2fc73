// This file is part of Retroreplay.
//
// Retroreplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroreplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroreplay.  If not, see <https://www.gnu.org/licenses/>.

package environment

import (
	"github.com/jetsetilly/retroreplay/integration"
	"github.com/jetsetilly/retroreplay/random"
)

// Label is used to name the environment
type Label string

// Environment is used to provide context for an emulation. Particularly useful
// when using multiple emulations
type Environment struct {
	Label Label

	// the integrations available to the emulation. custom integration paths
	// added to this registry are not seen by any other environment
	Integrations *integration.Registry

	// any randomisation required by the emulation should be retreived through
	// this structure
	Random *random.Random
}

// NewEnvironment is the preferred method of initialisation for the Environment type.
//
// The registry argument can be nil, in which case a new registry with no
// custom paths is created. Providing a non-nil value allows the integrations
// of more than one emulation to be shared.
func NewEnvironment(label Label, integrations *integration.Registry, seed uint64) *Environment {
	if integrations == nil {
		integrations = integration.NewRegistry()
	}
	return &Environment{
		Label:        label,
		Integrations: integrations,
		Random:       random.NewRandom(seed),
	}
}

// Normalise ensures the environment is in an known default state. Useful for
// tests where the sequence of random numbers must be the same for every run.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Random.Rewind()
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system
func (env *Environment) IsMainEmulation() bool {
	return env.Label == ""
}

// IsEmulation checks the emulation label and returns true if it matches
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation is allowed to create log entries.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}
