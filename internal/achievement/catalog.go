// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import "github.com/taibuivan/mediatrack/internal/media"

// Definition is a catalog entry: an achievement and its four tiers, Tiers[0]
// being Bronze.
type Definition struct {
	CodeName    string
	Name        string
	Description string
	Domain      media.Domain
	Tiers       [4]Criteria
}

// counts builds four count-only tiers.
func counts(bronze, silver, gold, platinum float64) [4]Criteria {
	return [4]Criteria{{Count: bronze}, {Count: silver}, {Count: gold}, {Count: platinum}}
}

// valued builds four tiers sharing one criteria value.
func valued(value string, bronze, silver, gold, platinum float64) [4]Criteria {
	tiers := counts(bronze, silver, gold, platinum)
	for i := range tiers {
		tiers[i].Value = value
	}
	return tiers
}

// Catalog returns the achievement definitions shipped with the application.
func Catalog() []Definition {
	return []Definition{
		// ## Movies
		{"completed_movies", "Cinephile", "Complete movies.", media.DomainMovies, counts(100, 400, 800, 1500)},
		{"director_movies", "Auteur Follower", "Complete movies by the same director.", media.DomainMovies, counts(5, 10, 20, 40)},
		{"actor_movies", "Fan Club", "Complete movies featuring the same actor.", media.DomainMovies, counts(10, 25, 50, 100)},
		{"studio_movies", "Studio Loyalist", "Complete movies from the same studio.", media.DomainMovies, counts(15, 40, 80, 150)},
		{"language_movies", "Polyglot Viewer", "Complete movies in different languages.", media.DomainMovies, counts(3, 7, 12, 20)},
		{"genre_horror_movies", "Scream Queen", "Complete horror movies.", media.DomainMovies, valued("horror", 10, 50, 100, 200)},
		{"short_movies", "Quick Watch", "Complete movies of 90 minutes or less.", media.DomainMovies, valued("90", 10, 50, 100, 200)},
		{"long_movies", "Marathon Runner", "Watch movies of 150 minutes or more.", media.DomainMovies, valued("150", 5, 25, 50, 100)},
		{"rated_movies", "Critic", "Rate movies.", media.DomainMovies, counts(25, 100, 300, 750)},
		{"watchtime_movies", "Screen Time", "Hours spent watching movies.", media.DomainMovies, counts(100, 500, 1000, 2500)},

		// ## Series
		{"completed_series", "Binge Watcher", "Complete TV series.", media.DomainSeries, counts(10, 50, 100, 250)},
		{"network_series", "Channel Surfer", "Watch series from different networks.", media.DomainSeries, counts(5, 10, 20, 35)},
		{"actor_series", "Familiar Face", "Watch series featuring the same actor.", media.DomainSeries, counts(3, 6, 10, 15)},
		{"genre_drama_series", "Drama Enthusiast", "Complete drama series.", media.DomainSeries, valued("drama", 5, 25, 50, 100)},
		{"short_series", "Miniseries Fan", "Complete series of 10 episodes or less.", media.DomainSeries, valued("10", 5, 15, 30, 60)},
		{"long_series", "Long Haul", "Watch series of 100 episodes or more.", media.DomainSeries, valued("100", 1, 5, 10, 25)},
		{"episodes_series", "Episode Counter", "Watch series episodes.", media.DomainSeries, counts(100, 1000, 5000, 10000)},
		{"language_series", "World Television", "Watch series in different languages.", media.DomainSeries, counts(2, 5, 8, 12)},

		// ## Anime
		{"completed_anime", "Otaku", "Complete anime.", media.DomainAnime, counts(10, 50, 150, 300)},
		{"studio_anime", "Studio Devotee", "Watch anime from the same studio.", media.DomainAnime, counts(5, 15, 30, 60)},
		{"genre_action_anime", "Shonen Spirit", "Complete action anime.", media.DomainAnime, valued("action", 5, 25, 75, 150)},
		{"short_anime", "Cour Collector", "Complete anime of 13 episodes or less.", media.DomainAnime, valued("13", 5, 25, 75, 150)},
		{"long_anime", "Long Runner", "Watch anime of 100 episodes or more.", media.DomainAnime, valued("100", 1, 3, 8, 15)},
		{"episodes_anime", "Episode Grinder", "Watch anime episodes.", media.DomainAnime, counts(100, 1000, 5000, 10000)},

		// ## Books
		{"completed_books", "Bookworm", "Finish books.", media.DomainBooks, counts(10, 50, 150, 400)},
		{"author_books", "Devoted Reader", "Finish books by the same author.", media.DomainBooks, counts(3, 7, 15, 30)},
		{"publisher_books", "Imprint Insider", "Finish books from the same publisher.", media.DomainBooks, counts(5, 15, 40, 80)},
		{"language_books", "Translator", "Finish books in different languages.", media.DomainBooks, counts(2, 4, 6, 10)},
		{"genre_fantasy_books", "World Builder", "Finish fantasy books.", media.DomainBooks, valued("fantasy", 5, 20, 50, 100)},
		{"short_books", "Novella Nibbler", "Finish books of 200 pages or less.", media.DomainBooks, valued("200", 5, 20, 50, 100)},
		{"long_books", "Doorstopper", "Read books of 600 pages or more.", media.DomainBooks, valued("600", 1, 5, 15, 30)},
		{"pages_books", "Page Turner", "Read pages.", media.DomainBooks, counts(1000, 10000, 50000, 100000)},

		// ## Games
		{"completed_games", "Completionist", "Complete games.", media.DomainGames, counts(5, 25, 75, 200)},
		{"developer_games", "Developer Devotee", "Complete games from the same developer.", media.DomainGames, counts(3, 6, 12, 20)},
		{"platform_games", "Multiplatform", "Play games on different platforms.", media.DomainGames, counts(2, 4, 6, 10)},
		{"perspective_first_person_games", "Through My Eyes", "Complete first-person games.", media.DomainGames, valued("first-person", 3, 10, 25, 50)},
		{"genre_rpg_games", "Role Player", "Complete role-playing games.", media.DomainGames, valued("role-playing-rpg", 3, 10, 25, 50)},
		{"long_games", "Time Sink", "Play games for 100 hours or more each.", media.DomainGames, valued("100", 1, 3, 8, 15)},
		{"playtime_games", "Dedicated Gamer", "Hours spent playing games.", media.DomainGames, counts(100, 500, 2000, 5000)},

		// ## Cross-domain
		{"completed_all", "Media Maven", "Complete entries across every medium.", media.DomainAll, counts(50, 250, 1000, 2500)},
		{"rated_all", "Tastemaker", "Rate entries across every medium.", media.DomainAll, counts(50, 250, 1000, 2500)},
		{"labels_all", "Archivist", "Use different labels across every medium.", media.DomainAll, counts(5, 15, 30, 60)},
	}
}
