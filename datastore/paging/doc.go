/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package paging drains paginated key-value queries and scans. A Runner issues one
// store call per page, feeds each page's resume token into the next call, and returns
// every row in store order, or nothing plus a StoreError naming the failed page.
package paging
