// Copyright 2012 Arne Roomann-Kurrik
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command rimsite builds the content bundles of the website and previews
// the blog and resources listings.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kurrik/fauxfile"
)

func main() {
	if err := NewRootCmd(&fauxfile.RealFilesystem{}, log.New(os.Stderr, "", log.LstdFlags)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
