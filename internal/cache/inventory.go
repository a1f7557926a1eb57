package cache

import "time"

const postKeyPrefix = "post:"

// PostTTL bounds how long a cached post may be served.
const PostTTL = 30 * time.Minute

// PostKey is the cache key of a single post.
func PostKey(postID string) string {
	return postKeyPrefix + postID
}
