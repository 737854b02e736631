// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

// Filesystem stores published terrain files under slash separated keys.
type Filesystem interface {
	Upload(key string, secondsCache int, data []byte) error
}

var contentTypes = map[string]string{
	".json": "application/json",
	".obj":  "model/obj",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".zst":  "application/zstd",
}
