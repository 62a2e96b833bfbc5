// Command feedtest exercises the client synchronization layer against a
// running server: load the feed, post, toggle likes, comment, and run a DM
// exchange between two identities.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"murmur/internal/client"
)

func main() {
	base := flag.String("base", "http://localhost:8080", "Server base URL")
	tenant := flag.String("tenant", "", "Tenant slug (default acme)")
	user := flag.String("user", "", "User subject (default u_alice)")
	peer := flag.String("peer", "u_bob", "Peer user subject for the DM exchange")
	rounds := flag.Int("rounds", 3, "Number of post/comment/like rounds")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall deadline")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	transport := client.NewTransport(*base)
	id := client.ResolveIdentity(*tenant, *user)
	log.Printf("acting as %s/%s against %s", id.Tenant, id.User, *base)

	feed := client.NewFeed(transport, id)
	feed.Load(ctx)
	log.Printf("feed: %d posts", len(feed.Posts()))

	for i := 0; i < *rounds; i++ {
		post, err := feed.CreatePost(ctx, fmt.Sprintf("feedtest round %d at %s", i+1, time.Now().Format(time.RFC3339)))
		if err != nil {
			log.Fatalf("create post: %v", err)
		}

		if err := feed.ToggleLike(ctx, post.ID); err != nil {
			log.Fatalf("toggle like: %v", err)
		}

		comments := client.NewComments(transport, id, post.ID)
		comments.Load(ctx)
		if _, err := comments.Add(ctx, "first!"); err != nil {
			log.Fatalf("add comment: %v", err)
		}
		log.Printf("round %d: post %d liked, %d comments", i+1, post.ID, len(comments.Items()))
	}

	if more, err := feed.LoadMore(ctx); err != nil {
		log.Fatalf("load more: %v", err)
	} else {
		log.Printf("load more: %v, view now %d posts", more, len(feed.Posts()))
	}

	runDM(ctx, transport, id, client.ResolveIdentity(id.Tenant, *peer))
	log.Println("feedtest complete")
}

// runDM has both identities exchange one message and verifies both sides
// converge on the same ordered thread.
func runDM(ctx context.Context, transport *client.Transport, me, peer client.Identity) {
	peerFeed := client.NewFeed(transport, peer)
	peerFeed.Load(ctx) // ensures the peer user exists server-side

	peerID := findUserID(ctx, transport, peer)
	if peerID == 0 {
		log.Fatalf("could not resolve peer user id for %s", peer.User)
	}

	convos := client.NewConversations(transport, me)
	convID, err := convos.GetOrCreate(ctx, peerID)
	if err != nil {
		log.Fatalf("get or create DM: %v", err)
	}

	mine := client.NewMessages(transport, me, convID)
	theirs := client.NewMessages(transport, peer, convID)

	if _, err := mine.Send(ctx, "ping"); err != nil {
		log.Fatalf("send: %v", err)
	}
	theirs.Load(ctx)
	if _, err := theirs.Send(ctx, "pong"); err != nil {
		log.Fatalf("reply: %v", err)
	}

	mine.Load(ctx)
	theirs.Load(ctx)
	if len(mine.Items()) != len(theirs.Items()) {
		log.Fatalf("thread mismatch: %d vs %d messages", len(mine.Items()), len(theirs.Items()))
	}
	log.Printf("dm %d: %d messages, both sides in sync", convID, len(mine.Items()))
}

func findUserID(ctx context.Context, transport *client.Transport, id client.Identity) uint64 {
	me, err := client.FetchMe(ctx, transport, id)
	if err != nil {
		return 0
	}
	return me.UserID
}
