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

// Package integration loads the content that turns an emulated program into
// an instrumented game: the ROM, the memory variables that make up the
// per-step info mapping (data), the reward and done rules (scenario), the
// default state (metadata) and any saved states.
//
// Integrations are found through a Registry. STABLE integrations are built
// into the binary. CUSTOM integrations are directories added to the registry
// with AddCustomPath(). Each integration is a directory named after the game,
// for example "Dodge-Toy", where the part after the final hyphen names the
// emulated system:
//
//	Dodge-Toy/
//		rom.toy
//		data.json
//		scenario.json
//		metadata.json
//		Level3.state
//		survival.json
//		survival.lua
//
// The data, scenario and metadata files may be JSON or YAML.
//
// A Registry is explicit configuration. There is no package level registry
// and two registries never share custom paths.
package integration
