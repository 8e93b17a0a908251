package render

const fragments = `
{{define "cards"}}{{range .}}<div class="country-card" role="button" tabindex="0" data-index="{{.Index}}" aria-label="{{.Country.Name.Common}}">
	<div class="img-box"><img src="{{.Country.Flags.PNG}}" alt="Flag of {{.Country.Name.Common}}" loading="lazy"></div>
	<h3>{{.Country.Name.Common}}</h3>
</div>
{{end}}{{end}}

{{define "pagination"}}{{if .ShowControls}}<button data-page="{{prev .Page}}"{{if not .HasPrev}} disabled aria-disabled="true"{{end}} aria-label="Previous page">&laquo;</button>
{{range .Window}}<button data-page="{{.}}"{{if eq . $.Page}} class="active" aria-current="page"{{end}} aria-label="Page {{.}}">{{.}}</button>
{{end}}<button data-page="{{next .Page}}"{{if not .HasNext}} disabled aria-disabled="true"{{end}} aria-label="Next page">&raquo;</button>{{end}}{{end}}

{{define "message"}}<p class="{{.Class}}">{{.Text}}</p>{{end}}

{{define "weather"}}<p id="city-name">{{.City}}</p>
<p id="temp">{{.TemperatureText}}</p>
<p id="condition">{{.Condition}}</p>{{end}}

{{define "modal"}}<div id="country-modal" class="modal{{if .Open}} show{{end}}" aria-hidden="{{if .Open}}false{{else}}true{{end}}" role="dialog" aria-modal="true" aria-labelledby="modal-name">
	<div class="modal-content">
		<button class="modal-close" aria-label="Close">&times;</button>
		<h2 id="modal-name">{{.View.Name}}</h2>
		{{if .View.FlagURL}}<img id="modal-flag" src="{{.View.FlagURL}}" alt="{{.View.FlagAlt}}">{{end}}
		<p><strong>Borders:</strong> <span id="modal-border">{{.View.Borders}}</span></p>
		<div id="weather">{{if .Open}}<p id="city-name">Loading weather...</p>{{end}}</div>
	</div>
</div>{{end}}
`

const page = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0 auto; max-width: 1100px; padding: 1rem; }
.card { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
.country-card { border: 1px solid #ddd; border-radius: 8px; padding: .5rem; cursor: pointer; text-align: center; }
.country-card img { width: 100%; height: 120px; object-fit: cover; }
#pagination-nav { display: flex; gap: .25rem; justify-content: center; margin: 1rem 0; }
#pagination-nav button.active { font-weight: bold; }
.modal { display: none; position: fixed; inset: 0; background: rgba(0,0,0,.5); }
.modal.show { display: flex; align-items: center; justify-content: center; }
.modal-content { background: #fff; padding: 1.5rem; border-radius: 8px; min-width: 300px; position: relative; }
.modal-close { position: absolute; top: .5rem; right: .5rem; }
#modal-flag { max-width: 240px; }
.error, .no-results { color: #a00; }
</style>
</head>
<body>
<section id="typewriter">
	<h2>Typewriter</h2>
	<textarea id="text" rows="3" cols="60"></textarea>
	<button id="submit">Submit</button>
	<input id="range" type="range" min="{{.MinSpeed}}" max="{{.MaxSpeed}}" value="{{.MinSpeed}}" aria-label="Typing speed">
	<p id="display"></p>
</section>

<section id="countries">
	<h2>Countries</h2>
	<input id="search-input" type="search" placeholder="Search countries..." aria-label="Search countries">
	<div id="country-grid" class="card">{{.Grid}}</div>
	<nav id="pagination-nav" aria-label="Pagination">{{.Nav}}</nav>
</section>

{{.Modal}}

<script>
(function () {
	var scheme = location.protocol === "https:" ? "wss://" : "ws://";
	var ws = new WebSocket(scheme + location.host + "/ws");

	function send(msg) {
		if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
	}

	var targets = {
		grid: function (html) { document.getElementById("country-grid").innerHTML = html; },
		nav: function (html) { document.getElementById("pagination-nav").innerHTML = html; },
		modal: function (html) { document.getElementById("country-modal").outerHTML = html; },
		weather: function (html) { document.getElementById("weather").innerHTML = html; },
		typewriter: function (html) { document.getElementById("display").innerHTML = html; }
	};

	ws.onmessage = function (e) {
		var msg = JSON.parse(e.data);
		var apply = targets[msg.region];
		if (apply) apply(msg.html);
	};

	document.getElementById("search-input").addEventListener("input", function (e) {
		send({ type: "search", query: e.target.value });
	});

	document.getElementById("submit").addEventListener("click", function () {
		send({ type: "typewriter_submit", text: document.getElementById("text").value });
	});

	document.getElementById("range").addEventListener("input", function (e) {
		send({ type: "typewriter_speed", value: parseInt(e.target.value, 10) });
	});

	document.addEventListener("click", function (e) {
		var pageBtn = e.target.closest("#pagination-nav button");
		if (pageBtn && !pageBtn.disabled) {
			send({ type: "page", page: parseInt(pageBtn.dataset.page, 10) });
			window.scrollTo({ top: 0, behavior: "smooth" });
			return;
		}
		if (e.target.closest(".modal-close")) {
			send({ type: "close", trigger: "button" });
			return;
		}
		if (e.target.id === "country-modal") {
			send({ type: "close", trigger: "backdrop" });
			return;
		}
		var card = e.target.closest(".country-card");
		if (card) send({ type: "select", index: parseInt(card.dataset.index, 10) });
	});

	document.addEventListener("keydown", function (e) {
		if (e.key === "Escape") {
			send({ type: "close", trigger: "escape" });
			return;
		}
		var card = e.target.closest && e.target.closest(".country-card");
		if (card && (e.key === "Enter" || e.key === " ")) {
			e.preventDefault();
			send({ type: "select", index: parseInt(card.dataset.index, 10) });
		}
	});
})();
</script>
</body>
</html>
`
