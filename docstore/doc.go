// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package docstore reads and writes named JSON documents in a blob store.

# Loading

Load returns the raw document, seeding it with a default when absent:

	data, err := docs.Load(ctx, "leaderboard.json", models.DefaultLeaderboard())

# Mutations

Every read-modify-write goes through Update, which serializes tasks per key:

	err := docs.Update(ctx, key, func(ctx context.Context) error {
		data, err := docs.Get(ctx, key)
		// ... modify ...
		return docs.Save(ctx, key, doc)
	})

Tasks for one key run strictly in submission order; a failed task does not
block the next. Tasks for different keys run concurrently.

# Limitations

The queue lives in this process. Two server processes writing the same
document can still lose updates: Save overwrites without any version check.
*/
package docstore
