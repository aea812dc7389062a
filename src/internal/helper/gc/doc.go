// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides reusable byte buffer pooling to reduce garbage collection overhead.
// It abstracts the [bytebufferpool] library to provide a consistent interface for
// buffer management across the application, particularly useful for high-throughput
// I/O operations on the MCP server's transport and outbound API paths.
//
// [bytebufferpool]: https://github.com/valyala/bytebufferpool
package gc
