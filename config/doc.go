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

// Package config holds the settings of the retroreplay command.
//
// Settings are read from a YAML file in the resource directory (see the
// paths package). Any setting can then be overridden by an environment
// variable. The names of the variables are the YAML names in upper case,
// prefixed with RETROREPLAY_. For example:
//
//	RETROREPLAY_DATABASE=records.db
//
// Command line flags are applied after the environment, by the command
// itself.
package config
