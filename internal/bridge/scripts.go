package bridge

import (
	"encoding/json"
	"fmt"
)

// EventName is the Wails event every page message is emitted under.
const EventName = "mailshell:bridge"

// Message kinds sent from the page.
const (
	KindResult = "result"
	KindOpen   = "open"
)

// Scripts run inside the remote page, which never loads the Wails JS
// runtime. They post event frames ("EE" + {name, data}) straight to the
// native message handler, the same frames runtime.EventsEmit would send.

// postJS defines __ms_post(msg) in the enclosing scope.
const postJS = `var __ms_post=function(msg){var f="EE"+JSON.stringify({name:%s,data:[msg]});try{if(window.chrome&&window.chrome.webview){window.chrome.webview.postMessage(f)}else if(window.webkit&&window.webkit.messageHandlers&&window.webkit.messageHandlers.external){window.webkit.messageHandlers.external.postMessage(f)}else if(window.WailsInvoke){window.WailsInvoke(f)}}catch(e){}};`

func post() string {
	return fmt.Sprintf(postJS, jsonString(EventName))
}

// ExtractScript returns JS that reads the text of the unread badge inside
// the inbox mailbox entry and reports it under requestID. A missing
// element surfaces as an error result.
func ExtractScript(requestID, mailboxClass, badgeClass string) string {
	return fmt.Sprintf(`(function(){
%s
try{
var __result=document.getElementsByClassName(%s).item(0).getElementsByClassName(%s).item(0).textContent;
__ms_post({kind:%s,requestId:%s,data:__result});
}catch(e){
__ms_post({kind:%s,requestId:%s,error:e.message||String(e)});
}
})();`,
		post(),
		jsonString(mailboxClass), jsonString(badgeClass),
		jsonString(KindResult), jsonString(requestID),
		jsonString(KindResult), jsonString(requestID),
	)
}

// InterceptScript returns JS that routes window.open and target=_blank
// link clicks to the host instead of opening a second webview. It installs
// once per document.
func InterceptScript() string {
	return fmt.Sprintf(`(function(){
if(window.__ms_intercept){return;}
window.__ms_intercept=true;
%s
var __ms_open=function(u){try{u=new URL(u,location.href).href}catch(e){return}__ms_post({kind:%s,url:u})};
window.open=function(u){if(u){__ms_open(String(u))}return null};
document.addEventListener("click",function(e){
var a=e.target&&e.target.closest?e.target.closest("a[target]"):null;
if(!a||!a.href||a.target==="_self"||a.target==="_top"||a.target==="_parent"){return;}
e.preventDefault();e.stopPropagation();__ms_open(a.href);
},true);
})();`,
		post(),
		jsonString(KindOpen),
	)
}

// NavigateScript returns JS that loads url in the current window.
func NavigateScript(url string) string {
	return "window.location.href = " + jsonString(url) + ";"
}

// jsonString returns a JSON-encoded string literal for safe JS embedding.
func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
