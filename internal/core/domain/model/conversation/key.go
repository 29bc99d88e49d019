package conversation

import "strconv"

// Key names the dialogue of one user in one chat. In a private chat both ids
// are the same; in a group every member gets a dialogue of their own.
type Key struct {
	ChatID int64
	UserID int64
}

// PrivateKey is the key of a one-to-one chat with userID.
func PrivateKey(userID int64) Key {
	return Key{ChatID: userID, UserID: userID}
}

// String formats the key as "chat:user", e.g. "-100123:42".
func (k Key) String() string {
	return strconv.FormatInt(k.ChatID, 10) + ":" + strconv.FormatInt(k.UserID, 10)
}
