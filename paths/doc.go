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

// Package paths contains functions to prepare paths for the resources used
// by the application: the configuration file, the session record database and
// the custom integration directory.
//
// If a directory named ".retroreplay" exists in the current working directory
// then that is used as the base path. Otherwise the base path is
// "retroreplay" inside the user's configuration directory, as returned by
// os.UserConfigDir().
package paths
