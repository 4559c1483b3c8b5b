// Package storefronttest serves a single-page replica of the storefront for
// browser-backed tests.
package storefronttest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
)

const (
	StandardUser     = "standard_user"
	StandardPassword = "secret_sauce"
	InvalidLogin     = "Epic sadface: Username and password do not match any user in this service"
)

// NewServer starts the storefront. The caller closes it.
func NewServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}))
}

const page = `<!DOCTYPE html>
<html>
<head><title>Swag Labs</title>
<style>.hidden { display: none; }</style>
</head>
<body>
<div id="login" class="screen">
	<input id="user-name" type="text" />
	<input id="password" type="password" />
	<input id="login-button" type="submit" value="Login" />
	<div id="login-error"></div>
</div>

<div id="inventory" class="screen hidden">
	<a class="shopping_cart_link" href="#">Cart</a>
	<select class="product_sort_container">
		<option value="az">Name (A to Z)</option>
		<option value="za">Name (Z to A)</option>
		<option value="lohi">Price (low to high)</option>
		<option value="hilo">Price (high to low)</option>
	</select>
	<div class="inventory_list"></div>
</div>

<div id="cart" class="screen hidden">
	<div class="cart_list"></div>
	<button id="checkout">Checkout</button>
</div>

<div id="checkout-one" class="screen hidden">
	<div class="checkout_info">
		<input id="first-name" type="text" />
		<input id="last-name" type="text" />
		<input id="postal-code" type="text" />
	</div>
	<input id="continue" type="submit" value="Continue" />
</div>

<div id="checkout-two" class="screen hidden">
	<div class="summary_info">
		<div class="summary_subtotal_label"></div>
		<div class="summary_tax_label"></div>
		<div class="summary_total_label"></div>
	</div>
	<button id="finish">Finish</button>
</div>

<div id="complete" class="screen hidden">
	<h2 class="complete-header">Thank you for your order!</h2>
</div>

<script>
var products = [
	{name: "Sauce Labs Backpack", price: 2999},
	{name: "Sauce Labs Bike Light", price: 999},
	{name: "Sauce Labs Bolt T-Shirt", price: 1599},
	{name: "Sauce Labs Fleece Jacket", price: 4999},
	{name: "Sauce Labs Onesie", price: 799},
	{name: "Test.allTheThings() T-Shirt (Red)", price: 1599}
];
var cart = [];
var order = "az";

function $(sel) { return document.querySelector(sel); }
function money(cents) { return (cents / 100).toFixed(2); }

function show(id) {
	document.querySelectorAll(".screen").forEach(function (s) { s.classList.add("hidden"); });
	$("#" + id).classList.remove("hidden");
}

function renderBadge() {
	var link = $(".shopping_cart_link");
	link.innerHTML = "Cart" + (cart.length ? ' <span class="shopping_cart_badge">' + cart.length + '</span>' : "");
}

function renderInventory() {
	var sorted = products.slice();
	var cmp = {
		az: function (a, b) { return a.name < b.name ? -1 : a.name > b.name ? 1 : 0; },
		za: function (a, b) { return a.name > b.name ? -1 : a.name < b.name ? 1 : 0; },
		lohi: function (a, b) { return a.price - b.price; },
		hilo: function (a, b) { return b.price - a.price; }
	}[order];
	sorted.sort(cmp);

	var list = $(".inventory_list");
	list.innerHTML = "";
	sorted.forEach(function (p) {
		var row = document.createElement("div");
		row.className = "inventory_item";
		row.innerHTML = '<div class="inventory_item_name"></div><div class="inventory_item_price"></div><button></button>';
		row.querySelector(".inventory_item_name").textContent = p.name;
		row.querySelector(".inventory_item_price").textContent = "$" + money(p.price);
		var btn = row.querySelector("button");
		btn.textContent = cart.indexOf(p.name) >= 0 ? "Remove" : "Add to cart";
		btn.addEventListener("click", function () {
			var i = cart.indexOf(p.name);
			if (i >= 0) { cart.splice(i, 1); } else { cart.push(p.name); }
			renderInventory();
		});
		list.appendChild(row);
	});
	renderBadge();
}

function find(name) {
	return products.filter(function (p) { return p.name === name; })[0];
}

function renderCart() {
	var list = $(".cart_list");
	list.innerHTML = "";
	cart.forEach(function (name) {
		var p = find(name);
		var row = document.createElement("div");
		row.className = "cart_item";
		row.innerHTML = '<div class="cart_quantity">1</div><div class="inventory_item_name"></div><div class="inventory_item_price"></div>';
		row.querySelector(".inventory_item_name").textContent = p.name;
		row.querySelector(".inventory_item_price").textContent = "$" + money(p.price);
		list.appendChild(row);
	});
}

function renderSummary() {
	var subtotal = cart.reduce(function (sum, name) { return sum + find(name).price; }, 0);
	var tax = Math.round(subtotal * 0.08);
	$(".summary_subtotal_label").textContent = "Item total: $" + money(subtotal);
	$(".summary_tax_label").textContent = "Tax: $" + money(tax);
	$(".summary_total_label").textContent = "Total: $" + money(subtotal + tax);
}

$("#login-button").addEventListener("click", function () {
	if ($("#user-name").value === "` + StandardUser + `" && $("#password").value === "` + StandardPassword + `") {
		renderInventory();
		show("inventory");
		return;
	}
	$("#login-error").innerHTML = '<h3 data-test="error"></h3>';
	$('[data-test="error"]').textContent = "` + InvalidLogin + `";
});

$(".product_sort_container").addEventListener("change", function (e) {
	order = e.target.value;
	renderInventory();
});

$(".shopping_cart_link").addEventListener("click", function (e) {
	e.preventDefault();
	renderCart();
	show("cart");
});

$("#checkout").addEventListener("click", function () { show("checkout-one"); });

$("#continue").addEventListener("click", function () {
	renderSummary();
	show("checkout-two");
});

$("#finish").addEventListener("click", function () {
	cart = [];
	show("complete");
});
</script>
</body>
</html>`
