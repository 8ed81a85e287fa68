// Package file stores generated assets such as images.
//
// S3Storage writes to Amazon S3 or any S3-compatible service through
// aws-sdk-go-v2; LocalStorage writes below a directory for local runs. Both
// return the object's public URL, which is what the creations log records.
//
//	storage, err := file.NewS3Storage(ctx, cfg)
//	key := file.ObjectKey("images", userID, "image/png")
//	obj, err := storage.Put(ctx, key, png, "image/png")
//
// S3 failures are classified into package errors (ErrAccessDenied,
// ErrBucketNotFound, ErrServiceUnavailable, ...) using smithy.APIError codes.
package file
