/*
Copyright © 2026 the UrbanCO2 authors.
This file is part of UrbanCO2.

UrbanCO2 is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

UrbanCO2 is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with UrbanCO2.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command urbanco2 is a command-line interface for the UrbanCO2 emission
// and capture model.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/urbanco2/urbanco2util"
)

func main() {
	if err := urbanco2util.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
